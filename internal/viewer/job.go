package viewer

type GenJob struct {
	ID          int64
	JobTitle    string
	JobDesc     string
	Tier        string
	Count       int64
	Optimize    int64
	Iterations  int64
	AcceptedNum int64
	RejectedNum int64
	IsFinished  int64
}
