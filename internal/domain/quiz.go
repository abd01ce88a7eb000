package domain

import (
	"strconv"
	"time"
)

// QuizSheet holds the footer data printed under a quiz
type QuizSheet struct {
	Date  time.Time
	Total int
}

// DateString returns date in YYYYMMDD format
func (q QuizSheet) DateString() string {
	return q.Date.Format("20060102")
}

// DisplayString returns the date as printed on the sheet
func (q QuizSheet) DisplayString() string {
	return q.Date.Format("Jan 2, 2006")
}

// ScoreString returns the empty score line, e.g. "/ 12"
func (q QuizSheet) ScoreString() string {
	return "/ " + strconv.Itoa(q.Total)
}
