package redis

import (
	"fmt"
	"sort"
	"strconv"

	"prop-server/db"

	log "github.com/sirupsen/logrus"
)

// SAVED_LISTINGS_KEY_FORMAT is the set of saved listing ids per client session.
const SAVED_LISTINGS_KEY_FORMAT = "saved_listings_v1:%s"

type RedisSavedDAO struct {
	client db.RedisClient
}

func NewRedisSavedDAO(client db.RedisClient) *RedisSavedDAO {
	return &RedisSavedDAO{client: client}
}

func (dao *RedisSavedDAO) Add(session string, id int64) error {
	return dao.client.SAdd(fmt.Sprintf(SAVED_LISTINGS_KEY_FORMAT, session), strconv.FormatInt(id, 10))
}

func (dao *RedisSavedDAO) Remove(session string, id int64) error {
	return dao.client.SRem(fmt.Sprintf(SAVED_LISTINGS_KEY_FORMAT, session), strconv.FormatInt(id, 10))
}

func (dao *RedisSavedDAO) Contains(session string, id int64) (bool, error) {
	return dao.client.SIsMember(fmt.Sprintf(SAVED_LISTINGS_KEY_FORMAT, session), strconv.FormatInt(id, 10))
}

// IDs returns the saved ids in ascending order. Malformed members are skipped.
func (dao *RedisSavedDAO) IDs(session string) ([]int64, error) {
	members, err := dao.client.SMembers(fmt.Sprintf(SAVED_LISTINGS_KEY_FORMAT, session))
	if err != nil {
		return nil, fmt.Errorf("failed to read saved set: %w", err)
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			log.Warnf("[RedisSavedDAO] Skipping malformed saved id %q", m)
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (dao *RedisSavedDAO) Clear(session string) error {
	return dao.client.Del(fmt.Sprintf(SAVED_LISTINGS_KEY_FORMAT, session))
}
