package redis

import (
	"encoding/json"
	"errors"
	"fmt"

	"prop-server/db"
	"prop-server/models"
)

// USER_LOCATION_KEY_FORMAT holds {latitude, longitude} per client session.
const USER_LOCATION_KEY_FORMAT = "user_location_v1:%s"

type RedisLocationDAO struct {
	client db.RedisClient
}

func NewRedisLocationDAO(client db.RedisClient) *RedisLocationDAO {
	return &RedisLocationDAO{client: client}
}

func (dao *RedisLocationDAO) SetLocation(session string, c models.Coordinate) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal location: %w", err)
	}
	if err := dao.client.Set(fmt.Sprintf(USER_LOCATION_KEY_FORMAT, session), string(data)); err != nil {
		return fmt.Errorf("failed to set location in redis: %w", err)
	}
	return nil
}

// GetLocation returns the stored coordinate, or nil when there is none.
func (dao *RedisLocationDAO) GetLocation(session string) (*models.Coordinate, error) {
	str, err := dao.client.Get(fmt.Sprintf(USER_LOCATION_KEY_FORMAT, session))
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location from redis: %w", err)
	}
	var c models.Coordinate
	if err := json.Unmarshal([]byte(str), &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal location JSON: %w", err)
	}
	return &c, nil
}

func (dao *RedisLocationDAO) DeleteLocation(session string) error {
	return dao.client.Del(fmt.Sprintf(USER_LOCATION_KEY_FORMAT, session))
}
