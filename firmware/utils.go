//go:build tamago && !debug

package main

import (
	"github.com/wallera-computer/bootswitch/log"
	"go.uber.org/zap"
)

func init() {

}

func logger() *zap.SugaredLogger {
	return log.Production().Sugar()
}
