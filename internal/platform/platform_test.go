package platform

import (
	"testing"
	"time"
)

func TestNotificationDefaults(t *testing.T) {
	var n Notification
	if n.appName() != "SmileCam" {
		t.Fatalf("app name = %q", n.appName())
	}
	if n.expireMillis() != 5000 {
		t.Fatalf("expire = %d", n.expireMillis())
	}
	n = Notification{App: "Other", Expire: 1500 * time.Millisecond}
	if n.appName() != "Other" || n.expireMillis() != 1500 {
		t.Fatalf("unexpected overrides %q %d", n.appName(), n.expireMillis())
	}
}
