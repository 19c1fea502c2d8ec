//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/dmitrijs2005/talentledger/internal/client/cli"
	"github.com/dmitrijs2005/talentledger/internal/client/client"
	"github.com/dmitrijs2005/talentledger/internal/client/config"
	"github.com/dmitrijs2005/talentledger/internal/client/services"
	wire "github.com/google/wire"
)

func InitApp(ctx context.Context, cfg *config.Config) (*cli.App, func(), error) {

	wire.Build(
		provideLogger,
		provideDB,
		provideGRPCClient,
		provideMetadataRepository,
		provideClock,
		provideRegistry,
		providePhotoCache,

		wire.Bind(new(services.SessionClient), new(*client.GRPCClient)),
		wire.Bind(new(services.DirectorySource), new(*client.GRPCClient)),
		wire.Bind(new(services.PreferenceSource), new(*client.GRPCClient)),
		wire.Bind(new(services.BalanceSource), new(*client.GRPCClient)),
		wire.Bind(new(services.GrantSource), new(*client.GRPCClient)),
		wire.Bind(new(services.UsageSource), new(*client.GRPCClient)),

		services.NewAuthService,
		services.NewRelationshipStore,
		services.NewCoinLedger,
		services.NewUnlockGrantStore,
		services.NewLocalUnlockCache,
		services.NewUnlockCoordinator,

		provideScreenDeps,
		cli.NewApp,
	)

	return nil, nil, nil
}
