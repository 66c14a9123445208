package constants

import "time"

const (
	IdentityKey = "user_id"

	// feed
	ViewWeight      = 1.0
	LikeWeight      = 3.0
	ShareWeight     = 5.0
	DecayPerHour    = 0.1
	ExploreFactor   = 0.2
	ExploreFloor    = 10.0
	DefaultPageSize = 10
	MaxPageSize     = 50

	// dashboard
	TopVideoLimit = 10

	// comment
	MaxCommentLength  = 500
	CommentRateWindow = time.Minute

	ShareLinkPrefix = "videoapp://video/"
	StreamUrlPrefix = "/api/videos/stream/"

	// redis keys
	EdgeLockPrefix     = "lock:edge:"
	CommentRateKeyTmpl = "rate:comment:%d"

	// rabbitmq
	EngagementExchange = "engagement_events"
	ModerationExchange = "moderation_events"
	EngagementQueue    = "engagement_queue"
	ModerationQueue    = "moderation_queue"

	FeedResource = "api:feed"
)

// stats columns
const (
	ViewCountColumn    = "view_count"
	LikeCountColumn    = "like_count"
	CommentCountColumn = "comment_count"
	ShareCountColumn   = "share_count"
)
