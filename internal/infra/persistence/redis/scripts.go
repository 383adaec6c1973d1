package redis

import "github.com/redis/go-redis/v9"

// Every key a script touches arrives in KEYS. Scripts that act on a username
// read earlier take it in ARGV and return staleUsername when it has changed,
// so the caller can read again and retry.
const staleUsername = -1

var (
	// KEYS: user hash, username set, order zset, sequence. ARGV: id, username.
	createUserScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 or redis.call('SCARD', KEYS[2]) > 0 then
  return 0
end
local seq = redis.call('INCR', KEYS[4])
redis.call('HSET', KEYS[1], 'username', ARGV[2])
redis.call('SADD', KEYS[2], ARGV[1])
redis.call('ZADD', KEYS[3], seq, ARGV[1])
return 1
`)

	// KEYS: user hash, old username set, new username set. ARGV: id, old username, new username.
	updateUserScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'username')
if not current then
  return 0
end
if current ~= ARGV[2] then
  return -1
end
redis.call('SREM', KEYS[2], ARGV[1])
redis.call('SADD', KEYS[3], ARGV[1])
redis.call('HSET', KEYS[1], 'username', ARGV[3])
return 1
`)

	// KEYS: user hash, username set, order zset. ARGV: id, username.
	deleteUserScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'username')
if not current then
  return 0
end
if current ~= ARGV[2] then
  return -1
end
redis.call('DEL', KEYS[1])
redis.call('SREM', KEYS[2], ARGV[1])
redis.call('ZREM', KEYS[3], ARGV[1])
return 1
`)
)
