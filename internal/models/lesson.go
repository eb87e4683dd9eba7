package models

// Lesson представляет урок, принадлежащий ровно одному курсу.
// Поле VideoURL обязано указывать на youtube.com, это проверяется
// до сохранения в хранилище.
type Lesson struct {
	ID          int
	CourseID    int    // Курс, которому принадлежит урок
	Title       string // Название урока
	Description string // Описание урока
	Preview     string // Ссылка на превью, пустая строка если нет
	VideoURL    string // Ссылка на видео (только youtube.com)
	OwnerUID    string // UID пользователя-владельца
}

// DummyLesson используется для приёма данных урока из JSON-запроса.
type DummyLesson struct {
	CourseID    int    `json:"course_id" validate:"required,gt=0"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Preview     string `json:"preview,omitempty" validate:"omitempty,url"`
	VideoURL    string `json:"video_url" validate:"required,url"`
}

// PatchLesson используется для приёма частичного обновления урока из
// JSON-запроса. Пустые поля оставляют текущие значения без изменений,
// принадлежность урока курсу не меняется.
type PatchLesson struct {
	Title       string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description string `json:"description,omitempty"`
	Preview     string `json:"preview,omitempty" validate:"omitempty,url"`
	VideoURL    string `json:"video_url,omitempty" validate:"omitempty,url"`
}

// LessonInfo описывает урок в ответах API.
type LessonInfo struct {
	ID          int    `json:"id"`
	CourseID    int    `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Preview     string `json:"preview,omitempty"`
	VideoURL    string `json:"video_url"`
	OwnerUID    string `json:"owner_uid"`
}
