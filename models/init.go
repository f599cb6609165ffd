package models

import (
	"log"

	"server/config"
	"server/db"
)

func Init() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Album{})
	db.Instance.AutoMigrate(&Memory{})

	bootstrapOwner()
}

// bootstrapOwner creates the initial account on an empty install. Further
// accounts can be added through the user API by anyone logged in.
func bootstrapOwner() {
	if config.INITIAL_OWNER_EMAIL == "" || config.INITIAL_OWNER_PASSWORD == "" {
		return
	}
	var count int64
	if err := db.Instance.Model(&User{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	_, err := UserCreate("Owner", config.INITIAL_OWNER_EMAIL, config.INITIAL_OWNER_PASSWORD)
	if err != nil {
		log.Printf("Cannot create initial owner: %v", err)
		return
	}
	log.Printf("Initial owner account created: %s", config.INITIAL_OWNER_EMAIL)
}
