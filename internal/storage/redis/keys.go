package redis

import "fmt"

// gamesKey is the HASH of game id -> JSON record
func (s *Storage) gamesKey() string {
	return fmt.Sprintf("%s:games", s.cfg.KeyPrefix)
}

// orderKey is the ZSET of game ids scored by id, which gives insertion order
// because ids only ever increase
func (s *Storage) orderKey() string {
	return fmt.Sprintf("%s:idx:games_order", s.cfg.KeyPrefix)
}

// counterKey is the INCR counter used for id assignment
func (s *Storage) counterKey() string {
	return fmt.Sprintf("%s:seq:game_id", s.cfg.KeyPrefix)
}
