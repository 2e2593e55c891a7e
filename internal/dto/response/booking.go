package response

import (
	"time"

	"padel-booking/internal/data/entity"
	"padel-booking/internal/wizard"
)

// StepInfo drives the progress bar.
type StepInfo struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Progress int    `json:"progress"`
}

func NewStepInfo(step wizard.Step) StepInfo {
	return StepInfo{Number: int(step), Name: step.String(), Progress: step.Progress()}
}

// BookingSnapshot is the JSON view of a session's wizard.
type BookingSnapshot struct {
	Step    StepInfo `json:"step"`
	Summary *Summary `json:"summary"`
}

type CourtView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PricePerHour string `json:"price_per_hour"`
	Hours        string `json:"hours,omitempty"`
	Image        string `json:"image,omitempty"`
}

func CourtToView(c entity.Court) CourtView {
	return CourtView{
		ID:           c.ID,
		Name:         c.Name,
		PricePerHour: FormatMoney(c.PricePerHour),
		Hours:        c.Hours(),
		Image:        c.Image,
	}
}

func CourtsToView(courts []entity.Court) []CourtView {
	out := make([]CourtView, 0, len(courts))
	for _, c := range courts {
		out = append(out, CourtToView(c))
	}
	return out
}

// DayView is one entry of the date strip.
type DayView struct {
	Value    string
	Label    string
	Long     string
	Selected bool
}

func DaysToView(days []time.Time, selected string) []DayView {
	out := make([]DayView, 0, len(days))
	for _, d := range days {
		value := d.Format(wizard.DateLayout)
		out = append(out, DayView{
			Value:    value,
			Label:    FormatShortDay(d),
			Long:     FormatLongDate(d),
			Selected: value == selected,
		})
	}
	return out
}

type SlotView struct {
	StartTime string
	EndTime   string
	Label     string
}

func SlotsToView(slots []entity.Slot) []SlotView {
	out := make([]SlotView, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotView{StartTime: s.StartTime, EndTime: s.EndTime, Label: s.Label()})
	}
	return out
}
