package profile

import (
	"testing"

	"agora/globals"
	"agora/models"
)

func TestResolveProfileImageApplicantChain(t *testing.T) {
	cases := []struct {
		name   string
		byRole map[models.RoleTag]string
		want   string
	}{
		{
			name: "applyWinsOverAll",
			byRole: map[models.RoleTag]string{
				models.RoleProfile:         "/img/a.png",
				models.RoleJobProfile:      "/img/b.png",
				models.RoleJobApplyProfile: "/img/c.png",
			},
			want: "/img/c.png",
		},
		{
			name: "jobProfileWhenNoApply",
			byRole: map[models.RoleTag]string{
				models.RoleProfile:    "/img/a.png",
				models.RoleJobProfile: "/img/b.png",
			},
			want: "/img/b.png",
		},
		{
			name:   "plainProfileLast",
			byRole: map[models.RoleTag]string{models.RoleProfile: "/img/a.png"},
			want:   "/img/a.png",
		},
		{
			name:   "nothingAssigned",
			byRole: nil,
			want:   globals.DefaultAvatar,
		},
		{
			name:   "emptyURLSkipped",
			byRole: map[models.RoleTag]string{models.RoleJobApplyProfile: "", models.RoleProfile: "/img/a.png"},
			want:   "/img/a.png",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveProfileImage(tc.byRole, ApplicantPriority)
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveProfileImageCreatorChainIgnoresApplyRole(t *testing.T) {
	byRole := map[models.RoleTag]string{
		models.RoleJobApplyProfile: "/img/apply.png",
		models.RoleProfile:         "/img/base.png",
	}
	if got := ResolveProfileImage(byRole, CreatorPriority); got != "/img/base.png" {
		t.Fatalf("creator chain must not consider jobApplyProfile, got %q", got)
	}
}

func TestResolveProfileImagePostChain(t *testing.T) {
	byRole := map[models.RoleTag]string{
		models.RolePostProfile: "/img/post.png",
		models.RoleProfile:     "/img/base.png",
	}
	if got := ResolveProfileImage(byRole, PostPriority); got != "/img/post.png" {
		t.Fatalf("post chain must prefer postProfile, got %q", got)
	}

	delete(byRole, models.RolePostProfile)
	if got := ResolveProfileImage(byRole, PostPriority); got != "/img/base.png" {
		t.Fatalf("post chain must fall back to profile, got %q", got)
	}
}

func TestResolveProfileImageCommunityChain(t *testing.T) {
	byRole := map[models.RoleTag]string{
		models.RoleJobProfile:  "/img/job.png",
		models.RolePostProfile: "/img/post.png",
	}
	if got := ResolveProfileImage(byRole, CommunityPriority); got != globals.DefaultAvatar {
		t.Fatalf("community chain only reads the profile role, got %q", got)
	}
}
