package types

import "testing"

func TestPartitionIDInvalid(t *testing.T) {
	if !InvalidPartitionID.Invalid() {
		t.Error("InvalidPartitionID should be invalid")
	}
	if MinPartitionID.Invalid() {
		t.Error("MinPartitionID should be valid")
	}
}

func TestReplicaIDInvalid(t *testing.T) {
	r := ReplicaID{Node: InvalidNodeID, Partition: MinPartitionID}
	if !r.Invalid() {
		t.Error("replica with invalid node should be invalid")
	}

	r = ReplicaID{Node: MinNodeID, Partition: MinPartitionID}
	if r.Invalid() {
		t.Error("replica with valid fields should be valid")
	}
}

func TestErrorCodeString(t *testing.T) {
	cases := map[ErrorCode]string{
		NoError:                "No_Error",
		ErrorCodeIOError:       "IO_Error",
		ErrorCodeAlreadyExists: "Already_Exist",
		ErrorCode(999):         "Unknown",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Errorf("ErrorCode(%d).String() = %s, want %s", code, got, want)
		}
	}
}
