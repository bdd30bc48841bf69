package cmd

import (
	"filevault/cmd/client/cmd/auth"
	"filevault/cmd/client/cmd/file"
	"filevault/cmd/client/cmd/share"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)

	rootCmd.AddCommand(file.FileCmd)
	file.FileCmd.AddCommand(file.UploadCmd)
	file.FileCmd.AddCommand(file.DownloadCmd)
	file.FileCmd.AddCommand(file.ListCmd)
	file.FileCmd.AddCommand(file.DeleteCmd)
	file.FileCmd.AddCommand(file.SharedCmd)

	rootCmd.AddCommand(share.ShareCmd)
	share.ShareCmd.AddCommand(share.CreateCmd)
	share.ShareCmd.AddCommand(share.RevokeCmd)
}
