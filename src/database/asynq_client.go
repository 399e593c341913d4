package database

import (
	"github.com/hibiken/asynq"
)

// AsynqRedisOpt is shared by the client, the worker server and the scheduler.
func AsynqRedisOpt(addr, password string) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: addr, Password: password}
}

func NewAsynqClient(addr, password string) *asynq.Client {
	return asynq.NewClient(AsynqRedisOpt(addr, password))
}
