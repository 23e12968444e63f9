package server

//go:generate swag init -g swagger.go -o docs --parseInternal

// @title drAIML API
// @version 0.1
// @description Medical statement validation: logic soundness, confidence scoring, ethics evaluation and the decision ledger.
// @contact.name drAIML Maintainers
// @contact.url https://github.com/draiml/draiml
// @BasePath /
