package tasks_test

import "tickit/pkg/tasks"

// memKV is an in-memory local state used across the package tests
type memKV map[string]string

var _ tasks.KV = memKV{}

func (m memKV) Get(key string) (string, error) { return m[key], nil }
func (m memKV) Set(key, value string) error    { m[key] = value; return nil }
func (m memKV) Delete(key string) error        { delete(m, key); return nil }
