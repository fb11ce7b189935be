package main

import "sfneuman.com/gogait/examples"

func main() {
	examples.ScoreRollout(5_000, 192382)
}
