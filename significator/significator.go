// Package significator assigns the planets that stand for the querent, the
// quesited matter, and any third parties a question's houses name, reading
// the ruler straight off the chart's house cusps.
package significator

import (
	"fmt"

	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/question"
)

// SameRuler records the traditional "unity of purpose" reading that applies
// when one planet rules both the querent's house and the quesited house.
type SameRuler struct {
	SharedRuler    chart.Planet
	Interpretation string
}

// Assignment is the resolved set of significators a judgment will track.
type Assignment struct {
	Valid  bool
	Reason string

	Querent  chart.Planet
	Quesited chart.Planet

	// Item is the natural significator for a transaction's moveable good
	// (e.g. the Sun for a car), set only when IsTransaction is true.
	Item     chart.Planet
	ItemName string

	// Student/Success are set only for third-person education questions.
	Student bool
	StudentPlanet  chart.Planet
	SuccessPlanet  chart.Planet

	IsTransaction          bool
	IsThirdPersonEducation bool

	SameRuler   *SameRuler
	Description string
}

var planetByName = map[string]chart.Planet{
	"sun": chart.Sun, "moon": chart.Moon, "mercury": chart.Mercury, "venus": chart.Venus,
	"mars": chart.Mars, "jupiter": chart.Jupiter, "saturn": chart.Saturn,
}

// Assign resolves an Analysis's houses into planetary significators using
// the chart's house rulers, applying transaction, third-person-education,
// and same-ruler-unity handling in that priority order.
func Assign(c *chart.HoraryChart, analysis question.Analysis) Assignment {
	querentRuler, ok := c.HouseRulers[1]
	if !ok {
		return Assignment{Reason: "cannot determine house rulers"}
	}
	sig := analysis.Significators

	if sig.IsTransaction {
		quesitedRuler, ok := c.HouseRulers[sig.QuesitedHouse]
		if !ok {
			return Assignment{Reason: "cannot determine house rulers"}
		}
		for item, planetName := range sig.Special {
			planet, known := planetByName[planetName]
			if !known {
				continue
			}
			return Assignment{
				Valid: true, Querent: querentRuler, Quesited: quesitedRuler,
				Item: planet, ItemName: item, IsTransaction: true,
				Description: fmt.Sprintf("Transaction setup: seller %s (ruler of 1), buyer %s (ruler of %d), %s: %s (natural significator)",
					querentRuler, quesitedRuler, sig.QuesitedHouse, item, planet),
			}
		}
		return Assignment{
			Valid: true, Querent: querentRuler, Quesited: quesitedRuler, IsTransaction: true,
			Description: fmt.Sprintf("Transaction setup: seller %s (ruler of 1), buyer %s (ruler of %d)", querentRuler, quesitedRuler, sig.QuesitedHouse),
		}
	}

	if sig.IsThirdPersonEducation {
		studentRuler, ok := c.HouseRulers[sig.StudentHouse]
		if !ok {
			return Assignment{Reason: "cannot determine house ruler for student"}
		}
		successRuler, ok := c.HouseRulers[sig.SuccessHouse]
		if !ok {
			return Assignment{Reason: "cannot determine house ruler for success"}
		}
		return Assignment{
			Valid: true, Querent: querentRuler, Quesited: successRuler,
			Student: true, StudentPlanet: studentRuler, SuccessPlanet: successRuler,
			IsThirdPersonEducation: true,
			Description: fmt.Sprintf("querent %s (ruler of 1), student %s (ruler of %d), success %s (ruler of %d)",
				querentRuler, studentRuler, sig.StudentHouse, successRuler, sig.SuccessHouse),
		}
	}

	quesitedRuler, ok := c.HouseRulers[sig.QuesitedHouse]
	if !ok {
		return Assignment{Reason: "cannot determine house rulers"}
	}

	result := Assignment{
		Valid: true, Querent: querentRuler, Quesited: quesitedRuler,
		Description: fmt.Sprintf("querent %s (ruler of 1), quesited %s (ruler of %d)", querentRuler, quesitedRuler, sig.QuesitedHouse),
	}
	if querentRuler == quesitedRuler {
		result.SameRuler = &SameRuler{
			SharedRuler:    querentRuler,
			Interpretation: "unity of purpose: the same planetary energy governs both querent and matter",
		}
		result.Description = fmt.Sprintf("shared significator: %s rules both house 1 and house %d", querentRuler, sig.QuesitedHouse)
	}
	return result
}
