package model

// UpsertAction describes which mutation an upsert performed (or would perform).
type UpsertAction string

const (
	UpsertActionCreated UpsertAction = "created"
	UpsertActionUpdated UpsertAction = "updated"
)
