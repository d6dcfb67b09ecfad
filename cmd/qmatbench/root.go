// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newRootCmd() *cobra.Command {
	var lang string
	root := &cobra.Command{
		Use:          "qmatbench",
		Short:        "Benchmark and report on int8 quantized matrix × vector kernels",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&lang, "lang", "en", "BCP 47 language tag used to format numbers")

	printer := func() (*message.Printer, error) {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("parsing --lang: %w", err)
		}
		return message.NewPrinter(tag), nil
	}

	root.AddCommand(newRunCmd(printer), newReportCmd(printer))
	return root
}
