package question

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransactionWordsOverridePossessionType(t *testing.T) {
	a := Analyze("Will I sell my car this month?")
	assert.Equal(t, Money, a.Category)
	assert.True(t, a.Significators.IsTransaction)
	assert.Equal(t, "sun", a.Significators.Special["car"])
}

func TestLostObjectClassification(t *testing.T) {
	a := Analyze("Where is my missing ring?")
	assert.Equal(t, LostObject, a.Category)
	assert.Contains(t, a.Houses, 2)
}

func TestMarriageQuestionUsesSeventhHouse(t *testing.T) {
	a := Analyze("Will I marry my partner?")
	assert.Equal(t, Marriage, a.Category)
	assert.Contains(t, a.Houses, 7)
	assert.Equal(t, "natural significator of love", a.Significators.Special["venus"])
}

func TestEducationVsLawsuitTieBreakPrefersEducation(t *testing.T) {
	a := Analyze("Will I pass my exam at school?")
	assert.Equal(t, Education, a.Category)
}

func TestEducationVsLawsuitTieBreakPrefersLawsuitWithCourtContext(t *testing.T) {
	a := Analyze("Will I win my court case regarding my academic course?")
	assert.Equal(t, Lawsuit, a.Category)
}

func TestThirdPersonEducationQuestionTurnsHouses(t *testing.T) {
	a := Analyze("Will he pass the exam?")
	assert.True(t, a.ThirdPerson.IsThirdPerson)
	assert.Equal(t, Education, a.Category)
	assert.Equal(t, 7, a.Significators.StudentHouse)
	assert.Equal(t, 9, a.Significators.PreparationHouse)
	assert.Equal(t, 10, a.Significators.SuccessHouse)
	assert.True(t, a.Significators.IsThirdPersonEducation)
}

func TestWillDoesNotFalsePositiveOnIll(t *testing.T) {
	a := Analyze("Will I get the job?")
	assert.NotEqual(t, Health, a.Category)
}

func TestHusbandsPossessionsUseEighthHouse(t *testing.T) {
	a := Analyze("Does my husband have enough money?")
	assert.Contains(t, a.Houses, 8)
	assert.Contains(t, a.Houses, 7)
}

func TestTimeframeDetection(t *testing.T) {
	a := Analyze("Will I get the job this month?")
	assert.True(t, a.Timeframe.HasTimeframe)
	assert.Equal(t, "this_month", a.Timeframe.Type)
}

func TestGeneralQuestionDefaultsToSeventhHouse(t *testing.T) {
	a := Analyze("What will happen with this situation?")
	assert.Equal(t, General, a.Category)
	assert.Equal(t, 7, a.Significators.QuesitedHouse)
}

func TestSpecificMonthTimeframe(t *testing.T) {
	a := Analyze("Will I get a job in September?")
	assert.True(t, a.Timeframe.HasTimeframe)
	assert.Equal(t, "specific_month", a.Timeframe.Type)
	assert.Equal(t, time.September, a.Timeframe.Month)

	asked := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	end, ok := a.Timeframe.EndDate(asked)
	assert.True(t, ok)
	assert.Equal(t, 2024, end.Year())
	assert.Equal(t, time.September, end.Month())
	assert.Equal(t, 30, end.Day())
}

func TestSpecificMonthAlreadyPassedRollsToNextYear(t *testing.T) {
	a := Analyze("Will we marry in March?")
	asked := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	end, ok := a.Timeframe.EndDate(asked)
	assert.True(t, ok)
	assert.Equal(t, 2025, end.Year())
	assert.Equal(t, time.March, end.Month())
	assert.Equal(t, 31, end.Day())
}

func TestSoonTimeframeHasNoEndDate(t *testing.T) {
	a := Analyze("Will I hear back soon?")
	assert.Equal(t, "soon", a.Timeframe.Type)
	_, ok := a.Timeframe.EndDate(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestThisWeekEndDateLandsOnSunday(t *testing.T) {
	a := Analyze("Will the deal close this week?")
	asked := time.Date(2024, time.June, 12, 9, 0, 0, 0, time.UTC) // a Wednesday
	end, ok := a.Timeframe.EndDate(asked)
	assert.True(t, ok)
	assert.Equal(t, time.Sunday, end.Weekday())
	assert.Equal(t, 16, end.Day())
}
