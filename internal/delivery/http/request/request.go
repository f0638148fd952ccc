package request

// SubmitJobRequest asks for one dataset to be assembled from inputs. Inputs
// are TMDB ids for films and page URLs for ratings and crew.
type SubmitJobRequest struct {
	Kind   string   `json:"kind"`
	Inputs []string `json:"inputs"`
}

type RetryJobsRequest struct {
	Kind  string `json:"kind"`
	Limit int    `json:"limit"` // defaults to DefaultRetryLimit
}

const DefaultRetryLimit = 100
