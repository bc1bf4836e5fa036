package domain

type RoomID string

const DefaultRoomCapacity = 4
