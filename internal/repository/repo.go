package repository

import (
	"github.com/avbelov/notekeeper/pkg/database"
)

type Repo struct {
	db database.Tx
}

func New(db database.Tx) *Repo {
	return &Repo{db: db}
}
