// Package repomanager vends repositories bound to either the pool or a
// transaction, so services can compose them inside dbx.WithTx.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pagekeeper/internal/dbx"
	"github.com/dmitrijs2005/pagekeeper/internal/server/repositories/pages"
	"github.com/dmitrijs2005/pagekeeper/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/pagekeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/pagekeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Pages(db dbx.DBTX) pages.Repository
}
