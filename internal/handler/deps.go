package handler

import (
	"letteram/internal/app/attachment"
	"letteram/internal/app/chat"
	"letteram/internal/app/storage"
	"letteram/internal/app/user"
	"letteram/internal/configs"
	"letteram/internal/pkg/pow"
)

// AppDeps bundles the collaborators injected into the HTTP handlers.
type AppDeps struct {
	Config  *configs.AppConfig
	Gateway *chat.Gateway
	Chat    *chat.Service
	Users   *user.Store
	Uploads *attachment.Pipeline
	Storage storage.Service
	Pow     *pow.Manager
}
