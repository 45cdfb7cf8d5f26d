// Package realtime pushes balance snapshots to connected clients over Redis
// pub/sub. Delivery is best effort and at least once: every event carries the
// full authoritative field values so consumers re-derive display state
// instead of applying deltas, and duplicate or out-of-order delivery is
// harmless.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/BronksDEV/luxbrasil-sub000/models"
	"github.com/BronksDEV/luxbrasil-sub000/utils"

	redis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type BalanceEvent struct {
	UserID          uint      `json:"user_id"`
	SpinsRemaining  int64     `json:"spins_remaining"`
	CurrencyBalance int64     `json:"currency_balance"`
	XP              int64     `json:"xp"`
	At              time.Time `json:"at"`
}

func userChannel(userID uint) string {
	return fmt.Sprintf("user:%d:events", userID)
}

// adminChannel receives a copy of every event for cross-user admin views.
const adminChannel = "admin:events"

// PublishBalance reads the committed balances and publishes a snapshot. Call
// it after the mutating transaction has committed, never inside it.
func PublishBalance(db *gorm.DB, userID uint) {
	if utils.RedisClient == nil {
		return
	}
	var user models.User
	if err := db.Select("id, spins_remaining, currency_balance, xp").Where("id = ?", userID).First(&user).Error; err != nil {
		log.Printf("[realtime] load user %d: %v", userID, err)
		return
	}
	evt := BalanceEvent{
		UserID:          user.ID,
		SpinsRemaining:  user.SpinsRemaining,
		CurrencyBalance: user.CurrencyBalance,
		XP:              user.XP,
		At:              time.Now(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		log.Printf("[realtime] marshal event: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := utils.RedisClient.Publish(ctx, userChannel(userID), payload).Err(); err != nil {
		log.Printf("[realtime] publish user %d: %v", userID, err)
	}
	_ = utils.RedisClient.Publish(ctx, adminChannel, payload).Err()
}

// Subscribe opens a pub/sub subscription for one user's event channel.
// Returns nil when Redis is not configured.
func Subscribe(ctx context.Context, userID uint) *redis.PubSub {
	if utils.RedisClient == nil {
		return nil
	}
	return utils.RedisClient.Subscribe(ctx, userChannel(userID))
}

// SubscribeAdmin opens the cross-user admin event stream.
func SubscribeAdmin(ctx context.Context) *redis.PubSub {
	if utils.RedisClient == nil {
		return nil
	}
	return utils.RedisClient.Subscribe(ctx, adminChannel)
}
