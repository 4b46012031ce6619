package mission

// RewardShards converts step points into a shard reward: half the points,
// clamped into [10, 25].
func RewardShards(points int) int {
	shards := points / 2
	if shards < 10 {
		shards = 10
	}
	if shards > 25 {
		shards = 25
	}
	return shards
}
