package models

import "time"

type CheckedInUser struct {
	Username    string     `json:"username"`
	NIC         string     `json:"nic"`
	CheckInTime *time.Time `json:"checkInTime"`
}

// CheckInStats is the live door dashboard feed.
type CheckInStats struct {
	Users               []FlatAttendee  `json:"users"`
	CheckedInUsers      []CheckedInUser `json:"checkedInUsers"`
	CheckedInPercentage float64         `json:"checkedInPercentage"`
	CheckedInCount      int             `json:"checkedInCount"`
	TotalCount          int             `json:"totalCount"`
}

type ApprovalStats struct {
	TotalUsers         int     `json:"totalUsers"`
	ApprovedUsers      int     `json:"approvedUsers"`
	RejectedUsers      int     `json:"rejectedUsers"`
	PendingUsers       int     `json:"pendingUsers"`
	TotalApprovedPrice float64 `json:"totalApprovedPrice"`
}
