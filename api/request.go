package api

type UploadJobReq struct {
	JobTitle   string `json:"jobTitle"`
	JobDesc    string `json:"jobDesc"`
	Tier       string `json:"tier"`
	Count      int64  `json:"count"`
	Optimize   bool   `json:"optimize"`
	Iterations int64  `json:"iterations"`
}

type DeleteJobReq struct {
	Id int64 `json:"id"`
}

// GenerateReq is the one-shot synchronous batch: nothing is stored, the
// candidates come back in the response.
type GenerateReq struct {
	Tier       string `json:"tier"`
	Count      int64  `json:"count"`
	Optimize   bool   `json:"optimize"`
	Iterations int64  `json:"iterations"`
}
