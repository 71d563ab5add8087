package utils

import (
	"os"
	"reflect"
	"strconv"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
)

func GetCacheLifespan() time.Duration {
	lifespan, err := strconv.Atoi(os.Getenv("CACHE_LIFESPAN"))
	if err != nil {
		lifespan = 1
	}
	return time.Duration(lifespan) * time.Hour
}

/* generic functions */

func GetTypeName[T any]() string {
	var v T
	typeOfT := reflect.TypeOf(v)
	return typeOfT.Name()
}

/* Redis */

// master data lists change rarely; give their cache a lifespan anyway so a
// missed invalidation self-heals
func typeHasExpiration(typeName string) bool {
	expirableTypes := map[string]bool{
		"Port":              true,
		"Incoterm":          true,
		"Currency":          true,
		"TemperaturePreset": true,
		"ContainerType":     true,
		"ProductCategory":   true,
	}
	return expirableTypes[typeName]
}

// store list of T, key Type + "List"
func StoreRedisList[T any](obj any) error {
	typeName := GetTypeName[T]()
	key := typeName + "List"

	var duration time.Duration
	if typeHasExpiration(typeName) {
		duration = GetCacheLifespan()
	}
	return config.SetRedisObject(key, &obj, duration)
}

// retrieve a list.
// returns nil if not cached
func RetrieveRedisList[T any]() ([]*T, error) {
	key := GetTypeName[T]() + "List"

	var result []*T
	exists, err := config.GetRedisObject(key, &result)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return result, nil
}

// clear list, TypeList
func RemoveRedisList[T any]() error {
	var key string = GetTypeName[T]() + "List"
	return config.RemoveRedisKey(key)
}
