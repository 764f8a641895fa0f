package core

import (
	"net/http"
	"time"
)

type ResponseData struct {
	Status  int         `json:"status,omitempty"`
	Message string      `json:"message,omitempty"`
	Detail  string      `json:"detail,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type Model struct {
	ID        uint       `json:"id" gorm:"primary_key"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
	DeletedAt *time.Time `json:"-" sql:"index"`
}

type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

type Bundle interface {
	GetRoutes() []Route
}
