package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mobile-shop/models"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCartStoreUnavailable is returned when Redis is down; cart endpoints
// cannot degrade to "no cache" the way product listings do.
var ErrCartStoreUnavailable = errors.New("cart store unavailable")

// Carts expire after a week of inactivity; every save renews the TTL.
const cartTTL = 7 * 24 * time.Hour

// CartRepository persists one cart per user as a JSON document in Redis.
// The pricing engine never touches storage; handlers load the cart here,
// run engine operations, then save it back.
type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

func cartKey(userID int) string {
	return fmt.Sprintf("cart:%d", userID)
}

// Get returns the user's cart, or a fresh empty cart when none is stored.
func (r *CartRepository) Get(ctx context.Context, userID int) (*models.Cart, error) {
	if models.RedisClient == nil {
		return nil, ErrCartStoreUnavailable
	}

	data, err := models.RedisClient.Get(ctx, cartKey(userID)).Bytes()
	if err == redis.Nil {
		return models.NewCart(), nil
	}
	if err != nil {
		return nil, err
	}

	cart := models.NewCart()
	if err := json.Unmarshal(data, cart); err != nil {
		// unreadable entry: drop it and start over
		models.RedisClient.Del(ctx, cartKey(userID))
		return models.NewCart(), nil
	}
	return cart, nil
}

func (r *CartRepository) Save(ctx context.Context, userID int, cart *models.Cart) error {
	if models.RedisClient == nil {
		return ErrCartStoreUnavailable
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return models.RedisClient.Set(ctx, cartKey(userID), data, cartTTL).Err()
}

func (r *CartRepository) Delete(ctx context.Context, userID int) error {
	if models.RedisClient == nil {
		return ErrCartStoreUnavailable
	}
	return models.RedisClient.Del(ctx, cartKey(userID)).Err()
}
