package player

type Player struct {
	PlayerID   int64
	PlayerName string
	Country    *string
}
