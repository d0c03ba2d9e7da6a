package wallet

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-arena/internal/redis"
)

const (
	walletKeyPrefix = "wallet:"
	balanceSuffix   = ":balance"
	creditSuffix    = ":credit:"

	// creditTTL bounds how long a credit reference is remembered
	creditTTL = 7 * 24 * time.Hour
)

type redisRepository struct {
	client          redisclient.Client
	startingBalance int64
}

// RedisConfig contains configuration for the Redis wallet repository
type RedisConfig struct {
	Client          redisclient.Client
	StartingBalance int64
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.StartingBalance < 0 {
		return errors.InvalidArgument("starting balance cannot be negative")
	}
	return nil
}

// NewRedis creates a new Redis-backed wallet repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client:          cfg.Client,
		startingBalance: cfg.StartingBalance,
	}, nil
}

func balanceKey(playerID string) string {
	return walletKeyPrefix + playerID + balanceSuffix
}

func creditKey(playerID, reference string) string {
	return walletKeyPrefix + playerID + creditSuffix + reference
}

func (r *redisRepository) Credit(ctx context.Context, input *CreditInput) (*CreditOutput, error) {
	if err := validateCredit(input); err != nil {
		return nil, err
	}

	claimed, err := r.client.SetNX(ctx, creditKey(input.PlayerID, input.Reference), input.Amount, creditTTL).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to claim credit %s", input.Reference)
	}
	if !claimed {
		slog.Info("Credit already applied",
			"player_id", input.PlayerID,
			"reference", input.Reference)

		balance, err := r.GetBalance(ctx, &GetBalanceInput{PlayerID: input.PlayerID})
		if err != nil {
			return nil, err
		}
		return &CreditOutput{Balance: balance.Balance, Applied: false}, nil
	}

	key := balanceKey(input.PlayerID)
	pipe := r.client.TxPipeline()
	pipe.SetNX(ctx, key, r.startingBalance, 0)
	incr := pipe.IncrBy(ctx, key, input.Amount)
	if _, err := pipe.Exec(ctx); err != nil {
		// release the claim so the credit can be retried
		r.client.Del(ctx, creditKey(input.PlayerID, input.Reference))
		return nil, errors.Wrapf(err, "failed to credit wallet for player %s", input.PlayerID)
	}

	return &CreditOutput{Balance: incr.Val(), Applied: true}, nil
}

func (r *redisRepository) GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error) {
	if err := validateGetBalance(input); err != nil {
		return nil, err
	}

	raw, err := r.client.Get(ctx, balanceKey(input.PlayerID)).Result()
	if err != nil {
		if err == redis.Nil {
			return &GetBalanceOutput{Balance: r.startingBalance}, nil
		}
		return nil, errors.Wrapf(err, "failed to get wallet for player %s", input.PlayerID)
	}

	balance, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errors.Internalf("corrupt balance for player %s: %q", input.PlayerID, raw)
	}

	return &GetBalanceOutput{Balance: balance}, nil
}
