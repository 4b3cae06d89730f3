package domain

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomReserved    RoomStatus = "reserved"
	RoomMaintenance RoomStatus = "maintenance"
	RoomCleaning    RoomStatus = "cleaning"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomReserved, RoomMaintenance, RoomCleaning:
		return true
	}
	return false
}

type Room struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	Number      string     `json:"number" gorm:"uniqueIndex" validate:"required"`
	Type        string     `json:"type"`
	Status      RoomStatus `json:"status" gorm:"index"`
	DailyRate   int64      `json:"daily_rate" validate:"required,gt=0"`
	MonthlyRate int64      `json:"monthly_rate,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EffectiveMonthlyRate falls back to dailyRate x 25 when no monthly rate is
// configured for the room.
func (r *Room) EffectiveMonthlyRate() int64 {
	if r.MonthlyRate > 0 {
		return r.MonthlyRate
	}
	return r.DailyRate * 25
}
