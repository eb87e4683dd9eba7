// Package authz содержит политику доступа к курсам и урокам.
//
// Роль вычисляется один раз на запрос из роли пользователя и владельца
// ресурса, дальше решение принимается по статической таблице.
// Принятый вариант политики: модератор может читать, изменять и удалять
// любые курсы и уроки; создание доступно любому аутентифицированному
// пользователю, владельцем становится автор запроса.
package authz

import "github.com/magabrotheeeer/course-platform/internal/models"

// Role роль актора относительно конкретного ресурса.
type Role int

const (
	// RoleOther аутентифицированный пользователь без прав на ресурс.
	RoleOther Role = iota
	// RoleOwner владелец ресурса.
	RoleOwner
	// RoleModerator участник группы модераторов.
	RoleModerator
)

// Action действие над ресурсом.
type Action int

const (
	ActionCreate Action = iota
	ActionRead
	ActionList
	ActionUpdate
	ActionDelete
)

// decisionTable статическая таблица решений: роль -> действие -> разрешение.
var decisionTable = map[Role]map[Action]bool{
	RoleOwner: {
		ActionCreate: true,
		ActionRead:   true,
		ActionList:   true,
		ActionUpdate: true,
		ActionDelete: true,
	},
	RoleModerator: {
		ActionCreate: true,
		ActionRead:   true,
		ActionList:   true,
		ActionUpdate: true,
		ActionDelete: true,
	},
	RoleOther: {
		ActionCreate: true,
		ActionRead:   false,
		ActionList:   false,
		ActionUpdate: false,
		ActionDelete: false,
	},
}

// RoleFor вычисляет роль актора относительно ресурса с данным владельцем.
func RoleFor(actorUID, actorRole, ownerUID string) Role {
	if actorRole == models.RoleModerator {
		return RoleModerator
	}
	if actorUID != "" && actorUID == ownerUID {
		return RoleOwner
	}
	return RoleOther
}

// Allow возвращает true, если роль допускает действие.
func Allow(role Role, action Action) bool {
	return decisionTable[role][action]
}

// ListScopedToOwner возвращает true, если списочные запросы актора должны
// быть ограничены его собственными записями. Модератор видит все строки.
func ListScopedToOwner(actorRole string) bool {
	return actorRole != models.RoleModerator
}
