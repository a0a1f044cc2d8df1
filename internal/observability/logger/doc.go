// Package logger provee el logger estructurado del servicio (zap) como
// singleton de proceso, más helpers de campos tipados y propagación por
// context para que cada capa loguee con el mismo request scope.
package logger
