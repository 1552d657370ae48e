// SPDX-License-Identifier: MPL-2.0

package main

import cmd "sms-launcher/cmd/smsboot"

func main() {
	cmd.Execute()
}
