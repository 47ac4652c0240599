package sim

import (
	"github.com/sirupsen/logrus"
)

// MeetingSimulator is the general-purpose fallback for two agents
// starting at opposite path ends and moving toward each other at
// arbitrary constant speeds. When a step would carry the agents past
// each other, the exact sub-step crossing time is solved linearly from
// the closing speed, so accuracy does not depend on the grid.
type MeetingSimulator struct {
	Length      float64 // meters
	SpeedA      float64 // m/s, forward from offset 0
	SpeedB      float64 // m/s, backward from offset Length
	StepSeconds float64
	SnapMeters  float64
	MaxSteps    int
	Logger      *logrus.Logger
}

// Meeting is the resolved crossing of the two agents
type Meeting struct {
	TimeSeconds float64 `json:"time_seconds"`
	Position    float64 `json:"position"` // along-path offset in meters
	Steps       int     `json:"steps"`
}

// NewMeetingSimulator creates a simulator with a 1s step and a 1m snap
// threshold
func NewMeetingSimulator(length, speedA, speedB float64, logger *logrus.Logger) *MeetingSimulator {
	return &MeetingSimulator{
		Length:      length,
		SpeedA:      speedA,
		SpeedB:      speedB,
		StepSeconds: 1.0,
		SnapMeters:  1.0,
		MaxSteps:    100000,
		Logger:      logger,
	}
}

// Meet advances both agents until they cross or the step budget runs
// out. Exhausting the budget is a configuration error, not a normal
// "no crossing" outcome.
func (ms *MeetingSimulator) Meet() (Meeting, error) {
	posA := 0.0
	posB := ms.Length
	t := 0.0
	closing := ms.SpeedA + ms.SpeedB

	for step := 0; step < ms.MaxSteps; step++ {
		nextA := posA + ms.SpeedA*ms.StepSeconds
		nextB := posB - ms.SpeedB*ms.StepSeconds

		if (nextA >= nextB || posB-posA <= ms.SnapMeters) && closing > 0 {
			// Solve for the exact sub-step crossing instead of accepting
			// the coarse grid point
			gap := posB - posA
			dt := gap / closing
			m := Meeting{
				TimeSeconds: t + dt,
				Position:    posA + ms.SpeedA*dt,
				Steps:       step,
			}
			if ms.Logger != nil {
				ms.Logger.WithFields(logrus.Fields{
					"time_seconds": m.TimeSeconds,
					"position_m":   m.Position,
					"steps":        m.Steps,
				}).Debug("Meeting resolved")
			}
			return m, nil
		}

		posA = nextA
		posB = nextB
		t += ms.StepSeconds
	}

	if ms.Logger != nil {
		ms.Logger.WithFields(logrus.Fields{
			"max_steps":     ms.MaxSteps,
			"closing_speed": closing,
		}).Error("Meeting simulator exhausted its step budget")
	}
	return Meeting{}, ErrNoMeetingFound
}
