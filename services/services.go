package services

// Services groups the services the HTTP layer and schedulers depend on.
type Services struct {
	Tasks   *TaskService
	Courses *CourseService
	Reports *ReportService
	Users   *UserService
}

func New(store Store, notifier PublicationNotifier, hashCost int) *Services {
	return &Services{
		Tasks:   NewTaskService(store),
		Courses: NewCourseService(store, notifier),
		Reports: NewReportService(store),
		Users:   NewUserService(store, hashCost),
	}
}
