package team

type Team struct {
	TeamID   int64
	TeamName string
}
