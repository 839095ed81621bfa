package main

const (
	artColor = "\x1b[38;5;203m"
	artReset = "\x1b[0m"
)

const padSmall = `
  .-----------------.
 /  (L)       (R)    \
|  _|_    ..    (X)   |
| --+--       (Y) (A) |
|   |     [+]   (B)   |
 \      .-----.      /
  '----'       '----'
`

const padBig = `
      .-----------------------------.
     /  [ZL]                  [ZR]   \
    /   (L)                    (R)    \
   |                                   |
   |     _|_      [-]  [+]      (X)    |
   |    --+--                 (Y) (A)  |
   |      |         (H)         (B)    |
   |                                   |
   |           (o)        (o)          |
    \         .-------------.         /
     \       /               \       /
      '-----'                 '-----'
`
