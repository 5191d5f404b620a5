package repomanager

import (
	"context"
	"database/sql"

	"github.com/wintakam/wintakam/internal/dbx"
	"github.com/wintakam/wintakam/internal/server/repositories/properties"
	"github.com/wintakam/wintakam/internal/server/repositories/refreshtokens"
	"github.com/wintakam/wintakam/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Properties(db dbx.DBTX) properties.Repository
}
