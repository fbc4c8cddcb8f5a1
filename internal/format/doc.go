// Package format contains the two softcode layout passes: Prettify expands an
// attribute value into one line per bracket group, Collapse folds indented
// continuation lines back onto their header.
//
// Назначение: преобразования поверх строк документа, без парсинга.
// Не делает: проверку синтаксиса, IO.
// Результат любого прохода: набор Edit, применяемый через Apply целиком или никак.
package format
