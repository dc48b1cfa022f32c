// Package admin is the mock administration console: an in-memory user
// directory, push broadcasts and the light page access switch.
package admin

import (
	"errors"
	"strings"
	"sync"
)

var ErrUserNotFound = errors.New("user not found")

type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	StatusBlocked Status = "blocked"
)

type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Device   string `json:"device"`
	Status   Status `json:"status"`
	Location string `json:"location"`
}

func mockUsers() []User {
	return []User{
		{ID: 1, Name: "Олександр К.", Device: "iPhone 13", Status: StatusOnline, Location: "Київ"},
		{ID: 2, Name: "Марія В.", Device: "Samsung S21", Status: StatusOffline, Location: "Львів"},
		{ID: 3, Name: "Іван П.", Device: "Xiaomi Redmi", Status: StatusOnline, Location: "Суми"},
		{ID: 4, Name: "Анна С.", Device: "iPhone 11", Status: StatusBlocked, Location: "Одеса"},
		{ID: 5, Name: "Дмитро Р.", Device: "Pixel 6", Status: StatusOnline, Location: "Харків"},
	}
}

// Directory holds the mock users. Changes live for the process lifetime.
type Directory struct {
	mu    sync.RWMutex
	users []User
}

func NewDirectory() *Directory {
	return &Directory{users: mockUsers()}
}

// Search returns users whose name or location contains term, ignoring case.
// A blank term matches everyone.
func (d *Directory) Search(term string) []User {
	needle := strings.ToLower(strings.TrimSpace(term))

	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]User, 0, len(d.users))
	for _, u := range d.users {
		if needle == "" ||
			strings.Contains(strings.ToLower(u.Name), needle) ||
			strings.Contains(strings.ToLower(u.Location), needle) {
			out = append(out, u)
		}
	}
	return out
}

// Len is the number of users a broadcast reaches.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.users)
}

// ToggleBlock unblocks a blocked user to offline and blocks anyone else.
func (d *Directory) ToggleBlock(id int) (User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.users {
		if d.users[i].ID != id {
			continue
		}
		if d.users[i].Status == StatusBlocked {
			d.users[i].Status = StatusOffline
		} else {
			d.users[i].Status = StatusBlocked
		}
		return d.users[i], nil
	}
	return User{}, ErrUserNotFound
}
