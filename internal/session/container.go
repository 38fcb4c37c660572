package session

import "github.com/saulo-duarte/pdfquiz-lambda/internal/config"

type SessionContainer struct {
	Repo    Repository
	Service SessionService
	Handler *Handler
}

func NewSessionContainer(generator Generator, s config.Settings) *SessionContainer {
	repo := NewRepository()
	service := NewService(repo, generator, WithMaxDocumentBytes(s.MaxDocumentBytes))
	handler := NewHandler(service, s.MaxDocumentBytes)

	return &SessionContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
