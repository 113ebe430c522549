// Package dummydb provides in-memory repositories for tests and local
// development without a database.
package dummydb

import (
	"sync"

	"github.com/tuitionlk/portal/core/account"
	"github.com/tuitionlk/portal/core/content"
	"github.com/tuitionlk/portal/core/lecturer"
	"github.com/tuitionlk/portal/core/material"
	"github.com/tuitionlk/portal/core/request"
)

type (
	DB struct {
		account  *accountTable
		lecturer *lecturerTable
		material *materialTable
		request  *requestTable
		content  *contentTable
	}

	accountTable struct {
		sync.RWMutex
		table map[string]*account.Account
	}

	lecturerTable struct {
		sync.RWMutex
		table map[string]*lecturer.Lecturer
	}

	materialTable struct {
		sync.RWMutex
		table map[string]*material.Material
	}

	requestTable struct {
		sync.RWMutex
		table map[string]*request.ProfileRequest
	}

	contentTable struct {
		sync.RWMutex
		banners map[string]*content.Banner
		home    *content.HomeContent
	}
)

func Open() (*DB, error) {
	db := &DB{
		account:  &accountTable{table: make(map[string]*account.Account)},
		lecturer: &lecturerTable{table: make(map[string]*lecturer.Lecturer)},
		material: &materialTable{table: make(map[string]*material.Material)},
		request:  &requestTable{table: make(map[string]*request.ProfileRequest)},
		content:  &contentTable{banners: make(map[string]*content.Banner)},
	}
	return db, nil
}
