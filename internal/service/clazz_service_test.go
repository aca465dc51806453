package service

import (
	"testing"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/util"
)

func TestCreateClazzGeneratesInviteCode(t *testing.T) {
	env := newTestEnv(t)

	clazz, err := env.clazzSvc.CreateClazz(env.teacher.ID, ClazzReq{Name: strPtr("初一2班")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(clazz.InviteCode) != 6 {
		t.Errorf("inviteCode = %q, want 6 chars", clazz.InviteCode)
	}
}

func TestJoinClazzIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	newbie := &model.User{Name: "新同学", Email: "newbie@example.com", Password: "x", Role: model.Student}
	if err := env.db.Create(newbie).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := env.clazzSvc.Join(env.clazz.InviteCode, newbie.ID); err != nil {
		t.Fatalf("join: %v", err)
	}
	// 重复加入不报错也不产生重复成员
	if _, err := env.clazzSvc.Join(env.clazz.InviteCode, newbie.ID); err != nil {
		t.Fatalf("rejoin: %v", err)
	}

	var count int64
	env.db.Model(&model.ClassMember{}).
		Where("class_id = ? AND user_id = ?", env.clazz.ID, newbie.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("membership rows = %d, want 1", count)
	}
}

func TestPreviewReportsMembership(t *testing.T) {
	env := newTestEnv(t)

	// 游客(userID=0)能看到班级信息但没有加入状态
	preview, err := env.clazzSvc.Preview(env.clazz.InviteCode, 0)
	if err != nil {
		t.Fatalf("guest preview: %v", err)
	}
	if preview.Name != env.clazz.Name {
		t.Errorf("name = %q, want %q", preview.Name, env.clazz.Name)
	}
	if preview.MemberCount != 1 {
		t.Errorf("memberCount = %d, want 1", preview.MemberCount)
	}
	if preview.Joined {
		t.Error("guest preview should not report joined")
	}

	// 已加入班级的学生看到 joined=true
	preview, err = env.clazzSvc.Preview(env.clazz.InviteCode, env.student.ID)
	if err != nil {
		t.Fatalf("member preview: %v", err)
	}
	if !preview.Joined {
		t.Error("member preview should report joined")
	}

	if _, err := env.clazzSvc.Preview("NOSUCH", 0); err == nil {
		t.Error("preview of unknown invite code should fail")
	}
}

func TestLeaveRevokesMembership(t *testing.T) {
	env := newTestEnv(t)

	if err := env.clazzSvc.Leave(env.clazz.ID, env.student.ID); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if err := env.clazzSvc.RequireMember(env.clazz.ID, env.student.ID); err != util.ErrNotClassMember {
		t.Errorf("err = %v, want ErrNotClassMember", err)
	}
}

func TestOwnedClazzRejectsOtherTeacher(t *testing.T) {
	env := newTestEnv(t)

	other := &model.User{Name: "李老师", Email: "other@example.com", Password: "x", Role: model.Teacher}
	if err := env.db.Create(other).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := env.clazzSvc.OwnedClazz(env.clazz.ID, other.ID); err != util.ErrPermissionDenied {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestListMembersVisibility(t *testing.T) {
	env := newTestEnv(t)

	// 班内学生可见
	members, err := env.clazzSvc.ListMembers(env.clazz.ID, env.student.ID, model.Student)
	if err != nil {
		t.Fatalf("list as member: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("members = %d, want 1", len(members))
	}

	// 班外学生不可见
	outsider := &model.User{Name: "路人", Email: "watcher@example.com", Password: "x", Role: model.Student}
	if err := env.db.Create(outsider).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := env.clazzSvc.ListMembers(env.clazz.ID, outsider.ID, model.Student); err != util.ErrNotClassMember {
		t.Errorf("outsider err = %v, want ErrNotClassMember", err)
	}

	// 非任课教师不可见
	other := &model.User{Name: "李老师", Email: "lz@example.com", Password: "x", Role: model.Teacher}
	if err := env.db.Create(other).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := env.clazzSvc.ListMembers(env.clazz.ID, other.ID, model.Teacher); err != util.ErrPermissionDenied {
		t.Errorf("other teacher err = %v, want ErrPermissionDenied", err)
	}
}

func TestDeleteClazzRemovesMembers(t *testing.T) {
	env := newTestEnv(t)

	if err := env.clazzSvc.DeleteClazz(env.clazz.ID, env.teacher.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	env.db.Model(&model.ClassMember{}).Where("class_id = ?", env.clazz.ID).Count(&count)
	if count != 0 {
		t.Errorf("members after delete = %d, want 0", count)
	}
}
