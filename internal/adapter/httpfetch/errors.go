package httpfetch

import "github.com/user/filmdata-service/internal/repository"

type (
	StatusError = repository.StatusError
	FetchError  = repository.FetchError
)
