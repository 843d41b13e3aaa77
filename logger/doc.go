// Package logger provides structured logging for paykit using zerolog.
//
// Every Logger carries its own level. Constructing one never changes
// zerolog's process-wide level, so two clients configured differently in the
// same process log independently. The level "off" disables a logger entirely.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg.Logging, "paykit").WithComponent("bitpay")
//	log.Debug("request sent", logger.RequestFields("POST", "invoices"))
package logger
