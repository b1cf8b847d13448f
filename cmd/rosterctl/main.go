// Command rosterctl is a terminal front-end for the roster entry editor. It
// drives the form session and delete confirmation the same way a graphical
// presentation layer would: raw field values in, field-level error messages
// out.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"rostercore/internal/core"
	"rostercore/internal/form"
	"rostercore/internal/logger"
	"rostercore/internal/schema"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rosterctl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log := logger.NewFromEnv().WithOutput(os.Stderr)
	metrics, err := core.OpenMetricsRecorder()
	if err != nil {
		return err
	}
	style, err := form.StyleFromEnv()
	if err != nil {
		return err
	}

	svc := core.NewInMemoryService(core.WithLogger(log), core.WithMetrics(metrics))
	session := form.NewSession(form.NewEntryBackend(svc))
	confirm := form.NewDeleteConfirmation(style, svc.DeleteRosterEntry)

	ctx := context.Background()
	in := bufio.NewScanner(os.Stdin)
	fmt.Println("ทำเนียบรายชื่อสมาชิกผู้แทนราษฎร")
	fmt.Println("commands: list, add, edit <id>, delete <id>, quit")

	for {
		fmt.Print("> ")
		if !in.Scan() {
			return nil
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(in.Text()), " ")
		arg = strings.TrimSpace(arg)
		switch cmd {
		case "":
		case "list":
			printEntries(svc)
		case "add":
			session.OpenCreate()
			submitForm(ctx, in, svc, session)
		case "edit":
			if err := session.OpenEdit(arg); err != nil {
				fmt.Printf("ไม่พบข้อมูลสมาชิก: %s\n", arg)
				continue
			}
			submitForm(ctx, in, svc, session)
		case "delete":
			confirm.Request(arg)
			runConfirm(ctx, in, confirm)
		case "quit", "exit":
			return nil
		default:
			fmt.Printf("unknown command %q\n", cmd)
		}
	}
}

func printEntries(svc *core.Service) {
	entries := svc.ListRosterEntries()
	if len(entries) == 0 {
		fmt.Println("ไม่พบข้อมูลสมาชิก")
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  เลขประจำตัว: %s  ชื่อ นามสกุล: %s", e.ID, e.MemberCode, e.Title)
		if e.Group != "" {
			line += "  พรรค: " + e.Group
		}
		fmt.Println(line)
	}
}

// formFields lists the prompts in entry order. The image prompt takes a file
// path; the file is uploaded to the blob store before submission.
var formFields = []struct {
	name  string
	label string
}{
	{schema.FieldMemberCode, "เลขประจำตัวสมาชิก"},
	{schema.FieldTitle, "ชื่อ นามสกุล"},
	{schema.FieldGroup, "พรรค"},
	{schema.FieldImage, "รูปภาพ (path)"},
}

func submitForm(ctx context.Context, in *bufio.Scanner, svc *core.Service, session *form.Session) {
	for session.State() != form.StateClosed {
		for _, f := range formFields {
			fmt.Printf("%s [%s]: ", f.label, session.Field(f.name))
			if !in.Scan() {
				session.Cancel()
				return
			}
			value := strings.TrimSpace(in.Text())
			if value == "" {
				continue
			}
			if f.name == schema.FieldImage {
				key, err := uploadPortrait(ctx, svc, value)
				if err != nil {
					fmt.Printf("อ่านไฟล์รูปภาพไม่ได้: %v\n", err)
					continue
				}
				value = key
			}
			session.SetField(f.name, value)
		}
		errs, err := session.Submit(ctx)
		if err != nil {
			fmt.Printf("submit failed: %v\n", err)
			return
		}
		if len(errs) == 0 {
			fmt.Println("บันทึกข้อมูลแล้ว")
			return
		}
		for _, field := range errs.Fields() {
			fmt.Printf("  %s: %s\n", field, errs[field].Message)
		}
	}
}

func uploadPortrait(ctx context.Context, svc *core.Service, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return svc.AttachPortrait(ctx, f, "image/*")
}

func runConfirm(ctx context.Context, in *bufio.Scanner, confirm *form.DeleteConfirmation) {
	fmt.Print("ยืนยันการลบ? (y/n): ")
	if !in.Scan() || strings.TrimSpace(strings.ToLower(in.Text())) != "y" {
		confirm.Cancel()
		return
	}
	existed, err := confirm.Confirm(ctx)
	if err != nil {
		fmt.Printf("delete failed: %v\n", err)
		return
	}
	if existed {
		fmt.Println("ลบข้อมูลแล้ว")
	} else {
		fmt.Println("ไม่พบข้อมูลสมาชิก")
	}
}
