// Package control validates operator actions (inicio, pausa, retorno, fim)
// against the last action recorded for the same stage of the same entity.
//
// The vocabulary is closed. Each (entity, stage) pair is an independent
// sequence; a stage may be restarted with inicio after fim.
package control
