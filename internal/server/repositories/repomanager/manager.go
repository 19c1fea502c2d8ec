package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/talentledger/internal/dbx"
	"github.com/dmitrijs2005/talentledger/internal/server/repositories/balances"
	"github.com/dmitrijs2005/talentledger/internal/server/repositories/candidates"
	"github.com/dmitrijs2005/talentledger/internal/server/repositories/grants"
	"github.com/dmitrijs2005/talentledger/internal/server/repositories/preferences"
	"github.com/dmitrijs2005/talentledger/internal/server/repositories/usage"
	"github.com/dmitrijs2005/talentledger/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Candidates(db dbx.DBTX) candidates.Repository
	Preferences(db dbx.DBTX) preferences.Repository
	Balances(db dbx.DBTX) balances.Repository
	Grants(db dbx.DBTX) grants.Repository
	Usage(db dbx.DBTX) usage.Repository
}
