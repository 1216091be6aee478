// Package fuzztests houses Go fuzz harnesses for the strata front end and
// the session layer (source -> lexer -> parser -> report -> session). They
// guard against panics, hangs and malformed reports on arbitrary input.
//
// Назначение: прогонять случайные байты через лексер, парсер, сессию и
// декодер отчётов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
