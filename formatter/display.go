package formatter

import (
	"fmt"
	"strings"

	"github.com/theoremus-urban-solutions/train-tracker/upstream"
	"github.com/theoremus-urban-solutions/train-tracker/utils"
)

// Color classes produced by StatusColor.
const (
	ColorSuccess = "success"
	ColorCaution = "caution"
	ColorDanger  = "danger"
	ColorInfo    = "info"
	ColorNeutral = "neutral"
)

// StatusColor maps a reported train status onto a fixed color class.
// Unknown statuses fall through to neutral.
func StatusColor(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "on-time", "on time", "proceed":
		return ColorSuccess
	case "delayed", "warning":
		return ColorCaution
	case "stopped", "hold":
		return ColorDanger
	case "early":
		return ColorInfo
	default:
		return ColorNeutral
	}
}

// FormatClockTime renders an API timestamp as a HH:MM:SS clock time.
// Unparseable input is echoed back unchanged.
func FormatClockTime(ts string) string {
	parsed, ok := utils.ParseTimestamp(ts)
	if !ok {
		return ts
	}
	return parsed.Format("15:04:05")
}

// DelayLabel renders a signed delay in minutes as display text.
func DelayLabel(minutes int) string {
	switch {
	case minutes > 0:
		return fmt.Sprintf("+%d min", minutes)
	case minutes < 0:
		return fmt.Sprintf("%d min early", -minutes)
	default:
		return "on time"
	}
}

// TrainView is the display projection of one train record.
type TrainView struct {
	ID               upstream.TrainID `json:"id"`
	Name             string           `json:"name"`
	Number           string           `json:"number"`
	Status           string           `json:"status"`
	StatusColor      string           `json:"statusColor"`
	EstimatedArrival string           `json:"estimatedArrival"`
	Delay            string           `json:"delay"`
	NextStop         string           `json:"nextStop"`
	ProgressPercent  float64          `json:"progressPercent"`
}

// ProjectTrain builds the display projection for one train.
func ProjectTrain(tr upstream.Train) TrainView {
	return TrainView{
		ID:               tr.ID,
		Name:             tr.Name,
		Number:           tr.Number,
		Status:           tr.Status,
		StatusColor:      StatusColor(tr.Status),
		EstimatedArrival: FormatClockTime(tr.EstimatedArrival),
		Delay:            DelayLabel(tr.DelayMinutes),
		NextStop:         tr.NextStop,
		ProgressPercent:  tr.ProgressPercent,
	}
}
