package domain

// ParseStatus tracks a receipt through the parse pipeline.
type ParseStatus string

const (
	ParseStatusQueued     ParseStatus = "queued"
	ParseStatusProcessing ParseStatus = "processing"
	ParseStatusCompleted  ParseStatus = "completed"
	ParseStatusFailed     ParseStatus = "failed"
)

// ReviewStatus tracks a review-queue row.
type ReviewStatus string

const (
	ReviewStatusPending   ReviewStatus = "pending"
	ReviewStatusResolved  ReviewStatus = "resolved"
	ReviewStatusDismissed ReviewStatus = "dismissed"
)
