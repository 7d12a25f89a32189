package cmd

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func makeLogger(isDebug bool) *zap.SugaredLogger {
	if !isDebug {
		return zap.NewNop().Sugar()
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	return logger.Sugar()
}

func printErrorJSON(err error) {
	message := "something went wrong"
	if err != nil {
		message = err.Error()
	}

	js, marshalErr := json.Marshal(ErrorResponse{Error: message})
	if marshalErr != nil {
		fmt.Println(marshalErr)
		return
	}
	fmt.Println(string(js))
}

func printError(err error, output string, message string) {
	if output == "json" {
		printErrorJSON(err)
	} else {
		errorPrinter.Printf("%s: %v\n", message, err)
	}
}
