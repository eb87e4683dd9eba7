package models

// PaymentFilter представляет параметры фильтрации списка платежей,
// которые передаются в слой доступа к данным. nil означает отсутствие фильтра.
type PaymentFilter struct {
	PaidCourseID  *int    // Фильтр по оплаченному курсу
	PaidLessonID  *int    // Фильтр по оплаченному уроку
	PaymentMethod *string // Фильтр по способу оплаты
	OrderDesc     bool    // Сортировка по дате платежа по убыванию
	Limit         int
	Offset        int
}
