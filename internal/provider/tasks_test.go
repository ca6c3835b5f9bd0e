package provider

import (
	"context"
	"errors"
	"testing"
	"time"
)

const sampleCSV = `"HostName","TaskName","Next Run Time","Status","Author","Schedule Type","Repeat: Every","Scheduled Task State"
"PC","\Vendor\VendorUpdate","N/A","Ready","Vendor Inc","At logon time","Disabled","Enabled"
"PC","\Vendor\Poller","12:00:00","Ready","Vendor Inc","Daily","0 Hour(s), 30 Minute(s)","Enabled"
"HostName","TaskName","Next Run Time","Status","Author","Schedule Type","Repeat: Every","Scheduled Task State"
"PC","\Microsoft\Windows\Defrag\ScheduledDefrag","N/A","Ready","Microsoft Corporation","Weekly","N/A","Enabled"
`

func TestParseTaskCSV(t *testing.T) {
	tasks, err := parseTaskCSV([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("parseTaskCSV: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}

	first := tasks[0]
	if first.Name != "VendorUpdate" {
		t.Errorf("Name = %q, want VendorUpdate", first.Name)
	}
	if first.Path != `\Vendor\VendorUpdate` {
		t.Errorf("Path = %q", first.Path)
	}
	if first.Author != "Vendor Inc" {
		t.Errorf("Author = %q", first.Author)
	}
	if first.Trigger != "At logon time" {
		t.Errorf("Trigger = %q", first.Trigger)
	}
	if first.RepeatEvery != 0 {
		t.Errorf("RepeatEvery = %v, want 0 for Disabled", first.RepeatEvery)
	}
	if first.State != "Enabled" {
		t.Errorf("State = %q, want Enabled", first.State)
	}

	if tasks[1].RepeatEvery != 30*time.Minute {
		t.Errorf("Poller RepeatEvery = %v, want 30m", tasks[1].RepeatEvery)
	}

	// The task after the repeated header row must still parse.
	if tasks[2].Name != "ScheduledDefrag" {
		t.Errorf("task after second header = %q, want ScheduledDefrag", tasks[2].Name)
	}
}

func TestParseTaskCSVNoHeader(t *testing.T) {
	if _, err := parseTaskCSV([]byte(`"PC","\Task","Ready"` + "\n")); err == nil {
		t.Fatal("listing without a header row should fail")
	}
}

func TestParseRepeatEvery(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"Disabled", 0},
		{"N/A", 0},
		{"1 Hour(s), 0 Minute(s)", time.Hour},
		{"0 Hour(s), 5 Minute(s)", 5 * time.Minute},
		{"2 Hour(s), 30 Minute(s)", 2*time.Hour + 30*time.Minute},
		{"01:00:00", time.Hour},
		{"00:10:00", 10 * time.Minute},
		{"00:00:30", 30 * time.Second},
	}
	for _, tt := range tests {
		if got := parseRepeatEvery(tt.in); got != tt.want {
			t.Errorf("parseRepeatEvery(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTaskLeafName(t *testing.T) {
	if got := taskLeafName(`\Vendor\Sub\Task`); got != "Task" {
		t.Errorf("taskLeafName = %q, want Task", got)
	}
	if got := taskLeafName("BareName"); got != "BareName" {
		t.Errorf("taskLeafName = %q, want BareName", got)
	}
}

func TestTasksExecError(t *testing.T) {
	p := NewTaskProviderWithExec(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("binary missing")
	})
	if _, err := p.Tasks(context.Background()); err == nil {
		t.Fatal("exec failure should surface as an error")
	}
}

func TestTasksViaExec(t *testing.T) {
	var gotName string
	p := NewTaskProviderWithExec(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		return []byte(sampleCSV), nil
	})

	tasks, err := p.Tasks(context.Background())
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if gotName != "schtasks" {
		t.Errorf("invoked %q, want schtasks", gotName)
	}
	if len(tasks) != 3 {
		t.Errorf("got %d tasks, want 3", len(tasks))
	}
}
