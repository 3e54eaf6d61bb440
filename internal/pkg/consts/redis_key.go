package consts

const (
	FeedCacheKey = "feed:rss:cache"
)

const (
	PostNumberLock = "lock:post:number"
)
